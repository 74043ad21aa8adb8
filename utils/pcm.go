package utils

// Float32ToInt16 converts a normalized float32 sample to 16-bit PCM.
// The input is clamped to [-1, 1]. Positive values scale by 32767 and
// negative values by 32768 so that both ends of the int16 range are
// reachable without overflow.
func Float32ToInt16(x float32) int16 {
	x = Clamp(x)

	if x < 0 {
		return int16(x * 32768.0)
	}
	return int16(x * 32767.0)
}

// Int16ToFloat32 is the inverse of Float32ToInt16.
func Int16ToFloat32(v int16) float32 {
	if v < 0 {
		return float32(v) / 32768.0
	}
	return float32(v) / 32767.0
}

// Float32ToUint8 converts a normalized float32 sample to unsigned 8-bit
// PCM, where silence sits at 128.
func Float32ToUint8(x float32) uint8 {
	x = Clamp(x)

	return uint8(int16(x*127.0) + 128)
}

// Clamp limits a sample to the [-1, 1] range.
func Clamp(x float32) float32 {
	if x > 1 {
		return 1
	}
	if x < -1 {
		return -1
	}
	return x
}

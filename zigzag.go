package mwmcodec

// ZigzagEncode maps a signed 32-bit integer to an unsigned 32-bit integer
// such that small-magnitude values (positive or negative) end up near
// zero: 0, -1, 1, -2, 2, ... -> 0, 1, 2, 3, 4, ...
func ZigzagEncode(n int32) uint32 {
	return uint32((n << 1) ^ (n >> 31))
}

// ZigzagDecode is the inverse of ZigzagEncode.
func ZigzagDecode(n uint32) int32 {
	return int32(n>>1) ^ -int32(n&1)
}

package navbuild

// compareSlicesUInt16 reports whether s1 and s2 share the same backing
// array, starting at the same element. Used when walking polygon vertex
// windows to detect wrap-around without re-deriving slice bounds.
func compareSlicesUInt16(s1, s2 []uint16) bool {
	return &s1[0] == &s2[0]
}

package streamjson

// keyByteAt returns the byte at pos in s, or 0 past the end — the same
// behavior a NUL-terminated C string gives s_match_key for free, and
// which never collides with a real key byte since keys don't embed NUL.
func keyByteAt(s string, pos int) byte {
	if pos < len(s) {
		return s[pos]
	}
	return 0
}

// narrowKey folds one more byte of the current key into the
// [curval.KeyEnum, st.keySetSup) match range, binary-searching keySet at
// the current key position. Only called while the range is non-empty;
// grounded on s_match_key in the original source.
func (st *ParserState) narrowKey(keySet []string, curval *Value, target byte) {
	pos := int(st.keyLen)

	if keyByteAt(keySet[curval.KeyEnum], pos) != target {
		low := curval.KeyEnum
		hi := st.keySetSup
		for hi != low {
			mid := (low + hi) / 2
			if target > keyByteAt(keySet[mid], pos) {
				low = mid + 1
			} else {
				if target < keyByteAt(keySet[mid], pos) {
					st.keySetSup = mid
				}
				hi = mid
			}
		}
		curval.KeyEnum = low
		if st.keySetSup == low {
			return
		}
	}

	if keyByteAt(keySet[st.keySetSup-1], pos) != target {
		st.keySetSup--
		maxMatch := curval.KeyEnum
		for maxMatch != st.keySetSup-1 {
			mid := (st.keySetSup + maxMatch) / 2
			if target < keyByteAt(keySet[mid], pos) {
				st.keySetSup = mid
			} else {
				maxMatch = mid
			}
		}
	}
}

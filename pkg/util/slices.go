package util

// ChunkSlice splits s into consecutive chunks of at most size elements. The
// chunks alias the original backing array.
func ChunkSlice[T any](s []T, size int) [][]T {
	if size <= 0 || len(s) == 0 {
		return nil
	}

	chunks := make([][]T, 0, (len(s)+size-1)/size)

	for start := 0; start < len(s); start += size {
		end := start + size
		if end > len(s) {
			end = len(s)
		}

		chunks = append(chunks, s[start:end])
	}

	return chunks
}

func ContainsString(s []string, str string) bool {
	for _, v := range s {
		if v == str {
			return true
		}
	}

	return false
}

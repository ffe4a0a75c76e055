package docio

import "io"

// CopyScanner scans all tokens from src, writing their bytes into dst.
// Stops on the first non-nil write error, returning the bytes written and
// any error. If the loop ends because Scan returned false, ScanError
// reports whatever scan-time error src carries (nil for ordinary
// end-of-input).
func CopyScanner(dst io.Writer, src Scanner) (n int64, err error) {
	for err == nil && src.Scan() {
		var m int
		m, err = dst.Write(src.Bytes())
		n += int64(m)
	}
	if err == nil {
		err = ScanError(src)
	}
	return n, err
}

// CopyScannerWith scans all tokens from src, writing their bytes into dst
// with sep between every token but not after the last. Stops on the first
// non-nil write error; like CopyScanner, a trailing scan-time error is
// surfaced via ScanError.
func CopyScannerWith(dst io.Writer, src Scanner, sep []byte) (n int64, err error) {
	first := true
	for err == nil && src.Scan() {
		var m int
		if !first {
			m, err = dst.Write(sep)
			n += int64(m)
			if err != nil {
				break
			}
		}
		first = false
		m, err = dst.Write(src.Bytes())
		n += int64(m)
	}
	if err == nil {
		err = ScanError(src)
	}
	return n, err
}

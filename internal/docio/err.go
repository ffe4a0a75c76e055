package docio

// Scanner abstracts over tokenizing scanners, like bufio.Scanner. Scan
// should return true if another token was scanned from input, false
// otherwise (EOF, read error, parse error, …).
type Scanner interface {
	Scan() bool
	Bytes() []byte
}

// ErrScanner is a Scanner extension for scanners that can report a scan
// error distinct from simple exhaustion.
type ErrScanner interface {
	Scanner
	Err() error
}

// ScanError returns any scan error retained by sc, if it implements
// ErrScanner.
func ScanError(sc Scanner) (err error) {
	if esc, ok := sc.(ErrScanner); ok {
		err = esc.Err()
	}
	return err
}

package i

// Logger is the levelled logger every component writes through.
type Logger interface {
	Info(string)
	Warning(string)
	Error(string)
}

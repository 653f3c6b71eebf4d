package logger

const (
	Main     = "main"
	Dispatch = "dispatch"
	Shell    = "shell"
	Manifest = "manifest"
)

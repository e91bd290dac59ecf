package app

// Version is stamped at build time with
// -ldflags "-X interview-ai/internal/app.Version=v1.2.3".
var Version = "dev"

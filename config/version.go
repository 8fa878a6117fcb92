package config

// Version is overridden at build time with -ldflags "-X vowboard.io/planner-gateway/config.Version=..."
var Version = "dev"

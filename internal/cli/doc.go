// Package cli implements the pulse command-line interface.
//
// The root command runs the dashboard. Everything else is a small
// subcommand:
//
//	pulse                  - Stream the ANSI dashboard until Ctrl+C
//	pulse --tui            - Interactive full-screen dashboard
//	pulse snapshot         - Take one sample and print it as YAML or JSON
//	pulse version          - Print build information
//	pulse completion SHELL - Generate a shell completion script
//
// # Configuration
//
// Settings resolve in this order, later entries winning:
//
//  1. Built-in defaults
//  2. ~/.config/pulse/config.yaml, or the file named by --config
//  3. PULSE_* environment variables (PULSE_INTERVAL=2s)
//  4. Command-line flags that were explicitly set
//
// The merged config is validated once before any sampling starts.
//
// # Shutdown
//
// Execute runs commands under a context that is cancelled by SIGINT or
// SIGTERM. The dashboard treats cancellation as the normal way out and
// prints its closing message; it is not reported as an error.
package cli

// Package cli contains the command line interface for rdmx.
//
// # Usage
//
//	rdmx [flags] FILE...                 render and rewrite (same as update)
//	rdmx update [flags] FILE...
//	rdmx tree [--format ast|json|yaml] FILE
//	rdmx actions [--format text|json|yaml] [NAMESPACE...]
//	rdmx init [--force]
//
// # Variables
//
// Directive parameters refer to variables as $name. The update command
// collects them from, in order of precedence:
//
//   - --var NAME=VALUE (repeatable, also -D)
//   - --vars-file FILE, a YAML or HCL file (repeatable; earlier files win)
//   - --module go.mod, defining $module, $module_name, $go_version
//   - environment variables named with --env-prefix (default RDMX_)
//
// # Backups
//
// Before a file is rewritten, its content is copied under --backup-dir
// (default: the backup subdirectory of the user cache directory) in a
// directory named after the current time. Use --no-backup to disable.
//
// # Configuration
//
// Flags may also be set in $XDG_CONFIG_HOME/rdmx/config.yaml, either by flag
// name or nested under the flag group:
//
//	log-level: debug
//	backup-dir: /var/backups/rdmx
//	log:
//	  format: json
//
// The init command writes this file from the current global flags. A JSON
// file config.json next to it is read as well. Command line flags override
// both.
//
// # Logging Options
//
//   - --log-level: trace, debug, info, warn (default), error
//   - --log-format: text (default) or json
//   - --log-time-layout: timestamp layout, or none
//   - --log-caller: include caller information
//   - --[no-]log-pretty: colorized text output
//
// # Profiling Options
//
// Profiling is only available when built with the pprof build tag, which
// adds --pprof-mode and --pprof-dir.
package cli

package main

import (
	"fmt"
	"io"
)

// printUsage prints the main usage message.
func printUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: docmark <command> [flags] [args]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  build       Build HTML pages from documentation files")
	fmt.Fprintln(w, "  doctor      Check backends, styles, config and model")
	fmt.Fprintln(w, "  version     Show version information")
	fmt.Fprintln(w, "  help        Show help for a command")
	fmt.Fprintln(w, "  completion  Generate shell completion script")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Run 'docmark help <command>' for details on a specific command.")
	fmt.Fprintln(w, "'docmark file.md ...' is short for 'docmark build file.md ...'.")
}

// printBuildUsage prints usage for the build command.
func printBuildUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: docmark build <input>... [flags]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Build one HTML page per markdown file, resolving @{name} references")
	fmt.Fprintln(w, "against the project model.")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Arguments:")
	fmt.Fprintln(w, "  input    Markdown file or directory (walked recursively)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Input/Output:")
	fmt.Fprintln(w, "  -o, --output <path>          Output directory, or .html file for one input")
	fmt.Fprintln(w, "  -c, --config <name>          Config file name or path")
	fmt.Fprintln(w, "  -w, --workers <n>            Parallel workers (0 = auto)")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "References:")
	fmt.Fprintln(w, "  -m, --model <path>           Project model file (YAML)")
	fmt.Fprintln(w, "  -p, --package <name>         Package name for global references")
	fmt.Fprintln(w, "      --ref <prefix=template>  Custom reference, e.g. issue=https://x/issues/%s")
	fmt.Fprintln(w, "      --strict                 Fail when references cannot be resolved")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Rendering:")
	fmt.Fprintln(w, "  -f, --format <s>             plain, backtick, goldmark, blackfriday, minimal")
	fmt.Fprintln(w, "      --language <s>           Default language of untagged code blocks")
	fmt.Fprintln(w, "      --highlight-style <s>    Chroma style (default: github)")
	fmt.Fprintln(w, "      --line-numbers           Number highlighted code blocks")
	fmt.Fprintln(w, "      --no-highlight           Disable code highlighting")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Page:")
	fmt.Fprintln(w, "      --base-url <url>         Prefix for relative links (https://x/docs/ or /docs/)")
	fmt.Fprintln(w, "      --style <name|path>      Page stylesheet: default, dark, or a CSS file")
	fmt.Fprintln(w, "      --template <name|path>   Page template name or HTML file")
	fmt.Fprintln(w, "      --asset-path <dir>       Directory overriding built-in styles/templates")
	fmt.Fprintln(w, "      --updated <format>       \"Last updated\" footer: iso, datetime, european,")
	fmt.Fprintln(w, "                               us, long, or tokens YYYY MM DD HH mm ss")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Output Control:")
	fmt.Fprintln(w, "  -q, --quiet                  Only show errors")
	fmt.Fprintln(w, "  -v, --verbose                Show detailed timing")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Environment:")
	fmt.Fprintln(w, "  DOCMARK_CONFIG, DOCMARK_FORMAT, DOCMARK_PACKAGE, DOCMARK_MODEL,")
	fmt.Fprintln(w, "  DOCMARK_OUTPUT_DIR, DOCMARK_BASE_URL, DOCMARK_STYLE, DOCMARK_WORKERS")
	fmt.Fprintln(w, "  Precedence: flags > environment > config file > defaults")
}

// printDoctorUsage prints usage for the doctor command.
func printDoctorUsage(w io.Writer) {
	fmt.Fprintln(w, "Usage: docmark doctor [--json] [-c config]")
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Report which markdown backends construct, the available page styles,")
	fmt.Fprintln(w, "and whether the config and its project model load.")
}

// runHelp prints help for a specific command.
func runHelp(args []string, env *Environment) error {
	if len(args) == 0 {
		printUsage(env.Stdout)
		return nil
	}

	switch args[0] {
	case "build":
		printBuildUsage(env.Stdout)
	case "doctor":
		printDoctorUsage(env.Stdout)
	case "completion":
		printCompletionUsage(env.Stdout)
	case "version":
		fmt.Fprintln(env.Stdout, "Usage: docmark version")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show version information.")
	case "help":
		fmt.Fprintln(env.Stdout, "Usage: docmark help [command]")
		fmt.Fprintln(env.Stdout)
		fmt.Fprintln(env.Stdout, "Show help for a command.")
	default:
		printUsage(env.Stderr)
		return fmt.Errorf("%w: unknown command: %s", ErrUsage, args[0])
	}
	return nil
}

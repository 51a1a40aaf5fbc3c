package cli

import (
	"fmt"
	"io"
	"strings"
)

// CompletionShells lists the shells GenerateCompletion supports.
var CompletionShells = []string{"bash", "zsh", "fish"}

// GenerateCompletion writes a completion script for shell to out. kinds are
// the registered integer kind names offered after -kind.
func GenerateCompletion(out io.Writer, shell string, kinds []string) error {
	kindList := strings.Join(append(append([]string{}, kinds...), "all"), " ")
	var script string
	switch shell {
	case "bash":
		script = bashCompletion
	case "zsh":
		script = zshCompletion
	case "fish":
		script = fishCompletion
	default:
		return fmt.Errorf("unsupported shell: %s (accepted values: %s)", shell, strings.Join(CompletionShells, ", "))
	}
	_, err := fmt.Fprintf(out, script, kindList)
	return err
}

const bashCompletion = `# Bash completion script for ratenum
# Add this to your ~/.bashrc or ~/.bash_completion

_ratenum_completions() {
    local cur prev opts kinds
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    opts="-h -version -n -offset -at -kind -timeout -format -index -d -details -q -quiet -o -output -server -port -no-color -theme -env-file -log-level -completion"
    kinds="%s"

    case "${prev}" in
        -kind)
            COMPREPLY=( $(compgen -W "${kinds}" -- "${cur}") )
            return 0
            ;;
        -format)
            COMPREPLY=( $(compgen -W "text json yaml" -- "${cur}") )
            return 0
            ;;
        -theme)
            COMPREPLY=( $(compgen -W "dark light none" -- "${cur}") )
            return 0
            ;;
        -log-level)
            COMPREPLY=( $(compgen -W "debug info warn error" -- "${cur}") )
            return 0
            ;;
        -completion)
            COMPREPLY=( $(compgen -W "bash zsh fish" -- "${cur}") )
            return 0
            ;;
        -o|-output|-env-file)
            COMPREPLY=( $(compgen -f -- "${cur}") )
            return 0
            ;;
    esac

    if [[ "${cur}" == -* ]]; then
        COMPREPLY=( $(compgen -W "${opts}" -- "${cur}") )
        return 0
    fi
}

complete -F _ratenum_completions ratenum
`

const zshCompletion = `#compdef ratenum

# Zsh completion script for ratenum
# Place this file in a directory of your $fpath

_ratenum() {
    local -a kinds
    kinds=(%s)

    _arguments -s \
        '-h[Show help message]' \
        '-version[Show version information]' \
        '-n[Number of values to print]:count:' \
        '-offset[Index of the first value]:index:' \
        '-at[Compute the value at one index]:index:' \
        '-kind[Integer kind]:kind:($kinds)' \
        '-timeout[Maximum execution time]:duration:(10s 1m 5m)' \
        '-format[Output format]:format:(text json yaml)' \
        '-index[Prefix lines with their index]' \
        '(-d -details)'{-d,-details}'[Show details]' \
        '(-q -quiet)'{-q,-quiet}'[Quiet mode for scripts]' \
        '(-o -output)'{-o,-output}'[Output file path]:file:_files' \
        '-server[Start HTTP server mode]' \
        '-port[Server port]:port:(8080 3000 9000)' \
        '-no-color[Disable colored output]' \
        '-theme[Color theme]:theme:(dark light none)' \
        '-env-file[Read variables from a .env file]:file:_files' \
        '-log-level[Log level]:level:(debug info warn error)' \
        '-completion[Generate completion script]:shell:(bash zsh fish)'
}

_ratenum "$@"
`

const fishCompletion = `# Fish completion script for ratenum
# Add this to ~/.config/fish/completions/ratenum.fish

complete -c ratenum -f

complete -c ratenum -o h -d 'Show help message'
complete -c ratenum -o version -d 'Show version information'

complete -c ratenum -o n -d 'Number of values to print' -x
complete -c ratenum -o offset -d 'Index of the first value' -x
complete -c ratenum -o at -d 'Compute the value at one index' -x
complete -c ratenum -o kind -d 'Integer kind' -xa '%s'
complete -c ratenum -o timeout -d 'Maximum execution time' -xa '10s 1m 5m'

complete -c ratenum -o format -d 'Output format' -xa 'text json yaml'
complete -c ratenum -o index -d 'Prefix lines with their index'
complete -c ratenum -o d -o details -d 'Show details'
complete -c ratenum -o q -o quiet -d 'Quiet mode for scripts'
complete -c ratenum -o o -o output -d 'Output file path' -rF
complete -c ratenum -o no-color -d 'Disable colored output'
complete -c ratenum -o theme -d 'Color theme' -xa 'dark light none'

complete -c ratenum -o server -d 'Start HTTP server mode'
complete -c ratenum -o port -d 'Server port' -xa '8080 3000 9000'

complete -c ratenum -o env-file -d 'Read variables from a .env file' -rF
complete -c ratenum -o log-level -d 'Log level' -xa 'debug info warn error'
complete -c ratenum -o completion -d 'Generate completion script' -xa 'bash zsh fish'
`

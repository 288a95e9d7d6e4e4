package cmd

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"text/template"

	"github.com/go-argcomplete/argcomplete/pkg/marker"
	"github.com/spf13/cobra"
	"github.com/xlab/tablewriter"
)

var shellcodeListFlag bool

var shellcodeCmd = &cobra.Command{
	Use:       "shellcode [bash|zsh|fish|tcsh]",
	Short:     "print a shell init snippet that registers completion for this binary",
	ValidArgs: []string{"bash", "zsh", "fish", "tcsh"},
	Args:      cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if shellcodeListFlag {
			return listRegisteredScripts(cmd.OutOrStdout())
		}
		if len(args) == 0 {
			return fmt.Errorf("specify a shell: bash, zsh, fish or tcsh")
		}
		return writeShellcode(cmd.OutOrStdout(), args[0], cmd.Root().Name())
	},
}

func init() {
	shellcodeCmd.Flags().BoolVar(&shellcodeListFlag, "list", false, "list candidate marker-literal locations instead of printing a script")
}

// writeShellcode renders the registration snippet for the named shell. Every
// variant funnels completion requests through the same protocol: the binary
// is re-invoked with _ARGCOMPLETE=1 and friends set, candidates are read back
// on fd 8, IFS-joined.
func writeShellcode(w io.Writer, shell, prog string) error {
	tmpl, ok := shellTemplates[shell]
	if !ok {
		return fmt.Errorf("unsupported shell %q", shell)
	}
	t, err := template.New(shell).Parse(tmpl)
	if err != nil {
		return err
	}
	return t.Execute(w, struct{ Prog, Func string }{Prog: prog, Func: "_" + sanitizeFuncName(prog) + "_complete"})
}

func sanitizeFuncName(prog string) string {
	out := make([]rune, 0, len(prog))
	for _, r := range prog {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' {
			out = append(out, r)
		} else {
			out = append(out, '_')
		}
	}
	return string(out)
}

var shellTemplates = map[string]string{
	"bash": `{{.Func}}() {
    local IFS=$'\013'
    local SUPPRESS_SPACE=0
    if compopt +o nospace 2> /dev/null; then
        SUPPRESS_SPACE=1
    fi
    COMPREPLY=( $(IFS="$IFS" \
                  COMP_LINE="$COMP_LINE" \
                  COMP_POINT="$COMP_POINT" \
                  _ARGCOMPLETE_COMP_WORDBREAKS="$COMP_WORDBREAKS" \
                  _ARGCOMPLETE_SUPPRESS_SPACE=$SUPPRESS_SPACE \
                  _ARGCOMPLETE_SHELL="bash" \
                  _ARGCOMPLETE=1 \
                  "{{.Prog}}" 8>&1 9>&2 1>/dev/null 2>/dev/null) )
    if [[ $? != 0 ]]; then
        unset COMPREPLY
    fi
}
complete -o nospace -o default -F {{.Func}} {{.Prog}}
`,
	"zsh": `autoload -U +X bashcompinit && bashcompinit
{{.Func}}() {
    local IFS=$'\013'
    COMPREPLY=( $(IFS="$IFS" \
                  COMP_LINE="$BUFFER" \
                  COMP_POINT="$CURSOR" \
                  _ARGCOMPLETE_COMP_WORDBREAKS="$COMP_WORDBREAKS" \
                  _ARGCOMPLETE_SHELL="zsh" \
                  _ARGCOMPLETE=1 \
                  "{{.Prog}}" 8>&1 9>&2 1>/dev/null 2>/dev/null) )
}
complete -o nospace -o default -F {{.Func}} {{.Prog}}
`,
	"fish": `function {{.Func}}
    set -x _ARGCOMPLETE 1
    set -x _ARGCOMPLETE_SHELL fish
    set -x _ARGCOMPLETE_IFS "\t"
    set -x COMP_LINE (commandline -p)
    set -x COMP_POINT (string length (commandline -cp))
    for candidate in ("{{.Prog}}" 8>&1 9>&2 1>/dev/null 2>/dev/null | string split \t)
        echo $candidate
    end
end
complete -c {{.Prog}} -f -a '({{.Func}})'
`,
	"tcsh": `complete {{.Prog}} 'p,*,`set argcomplete_args = ($COMMAND_LINE); setenv _ARGCOMPLETE 1; setenv _ARGCOMPLETE_SHELL tcsh; setenv COMP_LINE "$argcomplete_args"; setenv COMP_POINT ${#argcomplete_args}; {{.Prog}} 8>&1 9>&2 1>/dev/null 2>/dev/null`,'
`,
}

// listRegisteredScripts renders a diagnostic table of the marker literal
// this binary expects in completion-registration scripts that source it,
// and whether a conventional install location on this machine carries it.
func listRegisteredScripts(w io.Writer) error {
	candidates := []string{
		os.ExpandEnv("$HOME/.bash_completion.d/" + rootCmd.Use),
		"/etc/bash_completion.d/" + rootCmd.Use,
		os.ExpandEnv("$HOME/.config/fish/completions/" + rootCmd.Use + ".fish"),
	}

	table := tablewriter.CreateTable()
	table.UTF8Box()
	table.AddTitle("Registration script status")
	table.AddRow("path", "marker found")
	table.AddSeparator()

	for _, path := range candidates {
		status := "missing"
		if ok, err := marker.CheckFile(path); err == nil && ok {
			status = "ok (" + marker.Literal + ")"
		}
		table.AddRow(path, status)
	}

	buf := new(bytes.Buffer)
	buf.WriteString(table.Render())
	_, err := w.Write(buf.Bytes())
	return err
}

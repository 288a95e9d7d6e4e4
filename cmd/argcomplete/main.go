// Command argcomplete-demo is a fixture CLI used to exercise the completion
// engine end-to-end: run it normally for its (trivial) own sake, or source
// `argcomplete-demo shellcode bash` in a shell to get live tab-completion
// for its flags and subcommands.
package main

import "github.com/go-argcomplete/argcomplete/cmd/argcomplete/cmd"

func main() {
	cmd.Execute()
}

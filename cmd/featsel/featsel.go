package main

import (
	"github.com/MakeNowJust/heredoc"

	basecmd "go.tefs.dev/featsel/cmd"
	"go.tefs.dev/featsel/selection/cmd"
)

func main() {
	basecmd.Run(&cmd.Cmd{}, "featsel", heredoc.Doc(`
		Pick the feature set a greedy transfer-entropy search should have
		stopped at, from the iteration trace it wrote.

		The selected feature ids are printed on one line, in ascending order.
	`))
}

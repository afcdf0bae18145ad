package main

import (
	"context"
	"fmt"
	"os"

	"github.com/99minutos/community-board/internal/cli"
)

func main() {
	if err := cli.Execute(context.Background()); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(cli.ExitCode(err))
	}
}

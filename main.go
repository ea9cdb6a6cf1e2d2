package main

import (
	"context"

	"github.com/forksync/forksync/cmd"
)

func main() {
	ctx := context.Background()
	cmd.Execute(ctx)
}

package main

import "github.com/corray333/backend-labs/storefront/internal/cmd"

func main() {
	cmd.Execute()
}

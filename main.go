package main

import "github.com/frahmantamala/portal-management/cmd"

func main() {
	cmd.Execute()
}

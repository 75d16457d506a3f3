package main

import "github.com/dbsmedya/planbrowser/cmd/planbrowser/cmd"

func main() {
	cmd.Execute()
}

package main

import "github.com/il2horusteam/dsget/cmd"

var version = "develop"

func main() {
	cmd.Execute(version)
}

package main

import "go.quasar.dev/core/cmd/quasarctl/quasarctlcmd"

func main() { quasarctlcmd.Execute() }

package main

import "github.com/leakscout/leakscout/cmd/leakscout"

func main() { leakscout.Execute() }

package main

import "github.com/esglens/esglens/cmd/esglens"

func main() { esglens.Execute() }

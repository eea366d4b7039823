package main

import (
	hilbertviz "github.com/chromy/hilbertviz/internal"
)

func main() {
	hilbertviz.Cmd()
}

// Copyright © 2023 J. Salvador Arias <jsalarias@gmail.com>
// All rights reserved.
// Distributed under BSD2 license that can be found in the LICENSE file.

// Sarsim is a tool for Monte Carlo lost-person location prediction.
package main

import (
	"github.com/js-arias/command"

	"github.com/sarsim/sarsim/cmd/sarsim/render"
	"github.com/sarsim/sarsim/cmd/sarsim/run"
)

var app = &command.Command{
	Usage: "sarsim <command> [<argument>...]",
	Short: "a tool for lost-person location prediction",
}

func init() {
	app.Add(run.Command)
	app.Add(render.Command)
}

func main() {
	app.Main()
}

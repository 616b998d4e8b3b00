package main

import "v.io/x/lib/cmdline"

// runnerFunc adapts a plain function to cmdline.Runner, avoiding a
// dependency on grailbio/base/cmdutil for the one thing this repo needs
// from it (see DESIGN.md).
type runnerFunc func(env *cmdline.Env, args []string) error

func (f runnerFunc) Run(env *cmdline.Env, args []string) error {
	return f(env, args)
}

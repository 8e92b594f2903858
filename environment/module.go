package environment

import (
	"github.com/reusee/dscope"
	"github.com/reusee/e5"
	"github.com/reusee/taitmpl/logs"
	"github.com/reusee/taitmpl/scripts"
	"github.com/reusee/taitmpl/tmplconfigs"
)

type Module struct {
	dscope.Module
	Configs tmplconfigs.Module
	Scripts scripts.Module
	Logs    logs.Module
}

var wrap = e5.Wrap.With(e5.WrapStacktrace)

package tmplconfigs

import (
	"github.com/reusee/dscope"
	"github.com/reusee/taitmpl/logs"
)

type Module struct {
	dscope.Module
	Logs logs.Module
}

package tmplconfigs

import (
	"errors"

	"github.com/reusee/taitmpl/configs"
)

func isNotFound(err error) bool {
	return errors.Is(err, configs.ErrValueNotFound)
}

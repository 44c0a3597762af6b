package demo

import "errors"

var ErrTemplateHeader = errors.New("demo template is missing required columns")

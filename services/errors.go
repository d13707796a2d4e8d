package services

import "errors"

// 供调谐器按类别归并到对外状态的错误类型
var (
	ErrPackaging     = errors.New("packaging error")
	ErrFilesystem    = errors.New("filesystem error")
	ErrSourceControl = errors.New("source control error")
	ErrInitSystem    = errors.New("init system error")
)

// Secret store lookup failures, reduced to an absent credential by the resolver.
var (
	ErrSecretNotFound     = errors.New("secret not found")
	ErrSecretAccessDenied = errors.New("secret access denied")
)

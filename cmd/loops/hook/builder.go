package hook

import (
	cfg_hook "github.com/vetstoria/k9facts/pkg/configs/hook"
)

// Build makes a Web hook for the value T from a webhook configuration.
func Build[T any](cfg cfg_hook.WebHook) Web[T] {
	return Web[T]{
		BeforeURL: cfg.Before,
		AfterURL:  cfg.After,
	}
}

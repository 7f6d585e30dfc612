package service

import "errors"

var (
	// 校验类
	ErrContentRequired = errors.New("post needs text content or an image")
	ErrContentTooLong  = errors.New("post content is too long")
	ErrCommentLength   = errors.New("comment must be between 1 and 500 characters")

	// 权限类（调用者身份由外部认证服务提供，这里只做归属判断）
	ErrNotOwner = errors.New("caller does not own this resource")

	// 目标不存在
	ErrNotFound = errors.New("resource not found")
)

// IsValidation 校验错误统一判断入口，handler 据此映射 400
func IsValidation(err error) bool {
	return errors.Is(err, ErrContentRequired) ||
		errors.Is(err, ErrContentTooLong) ||
		errors.Is(err, ErrCommentLength)
}

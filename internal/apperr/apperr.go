// Package apperr 定义业务错误分类。service 层用 Wrap 系列附加上下文，
// handler 层用 errors.Is 判断分类并映射HTTP状态码。
package apperr

import (
	"github.com/pkg/errors"
)

var (
	// ErrValidation 调用方输入不满足前置条件
	ErrValidation = errors.New("validation failed")
	// ErrNotFound 被引用的实体不存在
	ErrNotFound = errors.New("not found")
	// ErrReferentialIntegrity 删除会产生孤儿引用
	ErrReferentialIntegrity = errors.New("referential integrity violation")
	// ErrStateTransition 非法的生命周期状态迁移
	ErrStateTransition = errors.New("illegal state transition")
	// ErrStorage 底层事务失败，整个操作已回滚
	ErrStorage = errors.New("storage failure")
)

func Validationf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrValidation, format, args...)
}

func NotFoundf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrNotFound, format, args...)
}

func ReferentialIntegrityf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrReferentialIntegrity, format, args...)
}

func StateTransitionf(format string, args ...interface{}) error {
	return errors.Wrapf(ErrStateTransition, format, args...)
}

// Storage 将底层存储错误归入 ErrStorage 分类
func Storage(err error, msg string) error {
	if err == nil {
		return nil
	}
	return errors.Wrapf(ErrStorage, "%s: %v", msg, err)
}

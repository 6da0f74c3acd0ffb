package main

import (
	"testing"
)

// 测试内容：验证允许的上传路径通过安全检查（失败会 fatal 整个测试进程）。
func TestCheckSecurePath_Allowed(t *testing.T) {
	paths := []string{
		"uploads/images",
		"public/files",
		"static/img",
		"tmp/up",
		t.TempDir(), // 项目目录之外的绝对路径不受子目录限制
	}
	for _, p := range paths {
		checkSecurePath(p)
	}
}

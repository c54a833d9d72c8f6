package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeProjectName(t *testing.T) {
	assert.Equal(t, "alpha", NormalizeProjectName("Alpha"))
	assert.Equal(t, "alpha", NormalizeProjectName("  ALPHA  "))
	assert.Equal(t, "内部工具", NormalizeProjectName("内部工具"))
	// 同名项目不区分大小写，归一化后相等即视为重复
	assert.Equal(t, NormalizeProjectName("My-Project"), NormalizeProjectName("my-project"))
}

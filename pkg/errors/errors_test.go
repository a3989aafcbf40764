package errors

import (
	"errors"
	"fmt"
	"testing"

	"gorm.io/gorm"
)

func TestIsUniqueViolation(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"translated", fmt.Errorf("insert: %w", gorm.ErrDuplicatedKey), true},
		{"sqlite raw", errors.New("UNIQUE constraint failed: ratings.professor_course_semester_id, ratings.student_email"), true},
		{"postgres raw", errors.New(`ERROR: duplicate key value violates unique constraint "courses_name_key"`), true},
		{"other", errors.New("disk I/O error"), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsUniqueViolation(tc.err); got != tc.want {
				t.Errorf("IsUniqueViolation(%v)=%v，期望 %v", tc.err, got, tc.want)
			}
		})
	}
}

func TestIsForeignKeyViolation(t *testing.T) {
	if !IsForeignKeyViolation(gorm.ErrForeignKeyViolated) {
		t.Error("gorm.ErrForeignKeyViolated 应识别为外键冲突")
	}
	if !IsForeignKeyViolation(errors.New("FOREIGN KEY constraint failed")) {
		t.Error("sqlite 原始错误应识别为外键冲突")
	}
	if IsForeignKeyViolation(gorm.ErrDuplicatedKey) {
		t.Error("唯一冲突不应识别为外键冲突")
	}
}

func TestIsNotFound(t *testing.T) {
	if !IsNotFound(fmt.Errorf("wrap: %w", gorm.ErrRecordNotFound)) {
		t.Error("包装后的 ErrRecordNotFound 应被识别")
	}
	if IsNotFound(nil) {
		t.Error("nil 不应识别为不存在")
	}
}

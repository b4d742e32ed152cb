package review

import (
	"github.com/frahmantamala/portal-management/internal/core/common/validation"
)

type CreateCommentDTO struct {
	Content string `json:"content"`
}

func (dto CreateCommentDTO) Validate() error {
	v := validation.NewValidator()
	v.Field("content", dto.Content).Required().MaxLength(2000)
	return v.Validate()
}

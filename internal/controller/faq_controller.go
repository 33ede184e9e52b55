package controller

import (
	"podquest_backend/internal/service"
	"podquest_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type FAQController struct {
	FAQService *service.FAQService
}

func NewFAQController(faqService *service.FAQService) *FAQController {
	return &FAQController{FAQService: faqService}
}

// @Summary 获取常见问题
// @Description 获取FAQ列表，按排序字段升序
// @Tags FAQ
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/faq [get]
func (c *FAQController) List(ctx *gin.Context) {
	items, err := c.FAQService.GetFAQ()
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, items)
}

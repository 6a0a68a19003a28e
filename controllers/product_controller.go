package controllers

import (
	"github.com/gin-gonic/gin"

	"github.com/lamji/crud-api-mern-sub001/entity"
	"github.com/lamji/crud-api-mern-sub001/pkg/resp"
	"github.com/lamji/crud-api-mern-sub001/repository"
)

type ProductController struct {
	Repo *repository.ProductRepository
}

func NewProductController(repo *repository.ProductRepository) *ProductController {
	return &ProductController{Repo: repo}
}

// GET /products
func (pc *ProductController) List(c *gin.Context) {
	products, err := pc.Repo.ListAll(c.Request.Context())
	if err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.OK(c, gin.H{"products": products})
}

type createProductReq struct {
	Name  string  `json:"name" binding:"required"`
	Image string  `json:"image"`
	Price float64 `json:"price" binding:"min=0"`
}

// POST /products (admin)
func (pc *ProductController) Create(c *gin.Context) {
	var req createProductReq
	if err := c.ShouldBindJSON(&req); err != nil {
		resp.BadRequest(c, err.Error())
		return
	}

	p := entity.Product{Name: req.Name, Image: req.Image, Price: req.Price}
	if err := pc.Repo.Insert(c.Request.Context(), &p); err != nil {
		resp.ServerError(c, err)
		return
	}
	resp.Created(c, gin.H{"product": p})
}

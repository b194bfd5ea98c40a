package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/unbem/unbem/utils"
)

// IdentityController issues the opaque anonymous identity each client stores
// locally. There is no account, no password and no profile behind it.
type IdentityController struct{}

func NewIdentityController() *IdentityController { return &IdentityController{} }

// Create mints a new anonymous identity and its bearer token.
func (i *IdentityController) Create(ctx *gin.Context) {
	identity, token, err := utils.NewIdentityToken()
	if err != nil {
		utils.Error(ctx, http.StatusInternalServerError, 50010, "failed to issue identity")
		return
	}
	utils.Success(ctx, gin.H{"identity": identity, "token": token})
}

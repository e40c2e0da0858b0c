package echoServer

import (
	"libranet/app/echoServer/controller/catalog"
	"libranet/app/echoServer/controller/federation"
	"libranet/app/echoServer/controller/patron"

	"github.com/labstack/echo/v4"
)

type C struct {
	Catalog    *catalog.Controller
	Patron     *patron.Controller
	Federation *federation.Controller
}

func Register(e *echo.Echo, c C) {
	v1 := e.Group("/v1")

	// Identities
	v1.POST("/identities", c.Patron.NewIdentity)

	// Catalog, manager side (own branch only)
	v1.POST("/items", c.Catalog.Add)
	v1.DELETE("/items/:id", c.Catalog.Remove)
	v1.GET("/items", c.Catalog.List)

	// Borrow / return (routed to the owning branch)
	v1.POST("/items/:id/borrow", c.Patron.Borrow)
	v1.POST("/items/:id/return", c.Patron.Return)

	// Waiting list
	v1.POST("/waitlist", c.Patron.WaitlistAdd)
	v1.GET("/waitlist/ready", c.Patron.WaitlistReady)
	v1.DELETE("/waitlist/ready", c.Patron.WaitlistRemove)

	// Federation-wide reads
	v1.GET("/catalog", c.Patron.ShowAll)
	v1.GET("/catalog/search", c.Patron.Find)

	// Branch-to-branch surface; one hop max, handlers never forward.
	internal := e.Group("/internal")
	internal.POST("/items/:id/borrow", c.Federation.Borrow)
	internal.POST("/items/:id/return", c.Federation.Return)
	internal.GET("/items", c.Federation.List)
	internal.GET("/items/search", c.Federation.Search)
}

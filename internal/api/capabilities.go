package api

import "github.com/gin-gonic/gin"

// Handlers implement whichever of these capabilities their resource offers;
// registerResource mounts exactly the implemented ones.
type (
	Lister    interface{ List(c *gin.Context) }
	Creator   interface{ Create(c *gin.Context) }
	Retriever interface{ Retrieve(c *gin.Context) }
	Updater   interface{ Update(c *gin.Context) }
	Destroyer interface{ Destroy(c *gin.Context) }
)

// resource describes where a handler is mounted. Lister and Creator live on
// collection; Retriever, Updater and Destroyer on member. When member is
// empty, Destroyer is mounted on collection, which is how relation
// endpoints like /recipes/:id/favorite/ work.
type resource struct {
	collection string
	member     string
	handler    interface{}
	// write runs before every non-GET handler.
	write []gin.HandlerFunc
	// create runs after write, for Create only.
	create []gin.HandlerFunc
}

// chain copies the middleware groups into a fresh slice ending with h.
func chain(h gin.HandlerFunc, groups ...[]gin.HandlerFunc) []gin.HandlerFunc {
	var handlers []gin.HandlerFunc
	for _, g := range groups {
		handlers = append(handlers, g...)
	}
	return append(handlers, h)
}

func registerResource(rg *gin.RouterGroup, r resource) {
	if h, ok := r.handler.(Lister); ok {
		rg.GET(r.collection, h.List)
	}
	if h, ok := r.handler.(Creator); ok {
		rg.POST(r.collection, chain(h.Create, r.write, r.create)...)
	}

	destroyPath := r.member
	if r.member != "" {
		if h, ok := r.handler.(Retriever); ok {
			rg.GET(r.member, h.Retrieve)
		}
		if h, ok := r.handler.(Updater); ok {
			rg.PATCH(r.member, chain(h.Update, r.write)...)
		}
	} else {
		destroyPath = r.collection
	}
	if h, ok := r.handler.(Destroyer); ok {
		rg.DELETE(destroyPath, chain(h.Destroy, r.write)...)
	}
}

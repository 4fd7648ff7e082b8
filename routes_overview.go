package genuine

import (
	"github.com/cactusdualcore/genuine/core/rtr"
	"github.com/rohanthewiz/element"
)

// routesPage renders the server's route table as a simple HTML page.
type routesPage struct {
	Routes []rtr.RouteList
}

func (p routesPage) Render(b *element.Builder) any {
	b.H1().T("Registered Routes")

	if len(p.Routes) == 0 {
		b.P().T("No routes registered.")
		return nil
	}

	for _, route := range p.Routes {
		b.DivClass("route").R(
			b.P().R(
				b.Strong().T(route.Method),
				b.T(" ", route.Path),
			),
		)
	}
	return nil
}

// RoutesOverview returns a handler rendering an HTML overview of all
// registered routes. Register it on a route of your choosing:
//
//	s.Get("/routes", s.RoutesOverview())
//
// The route table is read when the page is requested, so routes
// registered later still show up.
func (s *Server) RoutesOverview() Handler {
	return func(ctx Context) error {
		b := element.NewBuilder()

		b.Html().R(
			b.Head().R(
				b.Title().T("Routes"),
				b.Style().T(`
					body { font-family: Arial, sans-serif; max-width: 800px; margin: 0 auto; padding: 20px; }
					.route { background: #e9ecef; padding: 6px 12px; margin: 6px 0; border-radius: 5px; }
				`),
			),
			b.Body().R(
				element.RenderComponents(b, routesPage{Routes: s.ListRoutes()}),
			),
		)

		return ctx.WriteHTML(b.String())
	}
}

// Package printing renders shopping lists to PDF.
//
// This package contains:
// - PDFRenderer interface for rendering HTML to PDF
// - ChromedpRenderer implementation using the Chrome DevTools Protocol
// - TemplateEngine for building shopping list HTML from embedded templates
//
// Example usage:
//
//	renderer := NewChromedpRenderer(cfg.Printing, logger)
//	defer renderer.Close()
//
//	engine, err := NewTemplateEngine()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	html, err := engine.RenderShoppingList(doc)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	result, err := renderer.Render(ctx, &RenderRequest{
//	    HTML:  html,
//	    Title: "Shopping List",
//	})
package printing

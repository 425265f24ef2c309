package mail

import (
	"fmt"
	"html"
	"strings"

	"github.com/currforge/currforge/agent"
	"github.com/currforge/currforge/curriculum"
)

// link is one downloadable document in the email body.
type link struct {
	Title    string
	Filename string
	Pages    int
	URL      string
}

// buildLinks lists the documents that actually rendered, in pipeline order.
// Failed tasks are silently omitted from the email.
func buildLinks(publicURL string, result *curriculum.RequestResult) []link {
	base := strings.TrimSuffix(publicURL, "/")
	var links []link
	for _, task := range agent.Registry() {
		res, ok := result.Results[task.Type]
		if !ok || res.Failed() || res.Filename == "" {
			continue
		}
		links = append(links, link{
			Title:    res.Title,
			Filename: res.Filename,
			Pages:    res.Pages,
			URL:      fmt.Sprintf("%s/api/download/%s", base, res.Filename),
		})
	}
	return links
}

func subject(result *curriculum.RequestResult) string {
	return fmt.Sprintf("Your %s Curriculum is Ready!", result.Context.Book)
}

func buildHTML(result *curriculum.RequestResult, links []link) string {
	var b strings.Builder
	book := html.EscapeString(result.Context.Book)
	fmt.Fprintf(&b, `<!DOCTYPE html>
<html>
<head><meta charset="UTF-8"><title>Your CurrForge Curriculum is Ready!</title></head>
<body style="margin:0;padding:0;font-family:Arial,sans-serif;background-color:#f8fafc;color:#1e293b;">
<table role="presentation" style="width:100%%;max-width:600px;margin:40px auto;background-color:#ffffff;border-radius:12px;overflow:hidden;">
<tr><td style="background:#EA580C;padding:40px 30px;text-align:center;">
<h1 style="margin:0;color:#ffffff;font-size:28px;">Your Curriculum is Forged!</h1>
<p style="margin:10px 0 0 0;color:#fed7aa;font-size:16px;">%s - Grade %s</p>
</td></tr>
<tr><td style="padding:30px;">
<p style="font-size:16px;line-height:1.6;color:#475569;">Your complete curriculum for <strong>%s</strong> has been generated and is ready to download.</p>
<p style="font-size:16px;line-height:1.6;color:#475569;">We created %d professional PDF documents covering %s of instruction:</p>
</td></tr>
<tr><td style="padding:0 30px 30px 30px;">`,
		book, html.EscapeString(result.Context.Grade), book, len(links), html.EscapeString(result.Context.Duration))

	for _, l := range links {
		fmt.Fprintf(&b, `
<table role="presentation" style="width:100%%;margin-bottom:15px;border:2px solid #e2e8f0;border-radius:8px;">
<tr><td style="padding:20px;background-color:#f8fafc;">
<div style="font-weight:600;font-size:16px;color:#1e293b;">%s</div>
<div style="font-size:13px;color:#64748b;">%s (%d pages)</div>
<a href="%s" style="display:inline-block;margin-top:10px;padding:12px 24px;background:#EA580C;color:#ffffff;text-decoration:none;border-radius:6px;font-weight:600;font-size:14px;">Download PDF</a>
</td></tr>
</table>`,
			html.EscapeString(l.Title), html.EscapeString(l.Filename), l.Pages, l.URL)
	}

	b.WriteString(`
</td></tr>
<tr><td style="padding:30px;background-color:#f8fafc;border-top:2px solid #e2e8f0;text-align:center;">
<p style="margin:0 0 10px 0;color:#64748b;font-size:14px;">Forged by <strong style="color:#EA580C;">CurrForge</strong></p>
<p style="margin:0;color:#94a3b8;font-size:12px;">Need help? Visit <a href="https://currforge.com/support" style="color:#EA580C;">currforge.com/support</a></p>
</td></tr>
</table>
</body>
</html>`)
	return b.String()
}

func buildText(result *curriculum.RequestResult, links []link) string {
	var b strings.Builder
	b.WriteString("YOUR CURRICULUM IS READY!\n\n")
	fmt.Fprintf(&b, "%s - Grade %s\n\n", result.Context.Book, result.Context.Grade)
	fmt.Fprintf(&b, "Your complete curriculum for %s has been generated.\n\n", result.Context.Duration)
	b.WriteString("DOWNLOAD YOUR PDFs:\n")
	for _, l := range links {
		fmt.Fprintf(&b, "- %s\n  %s\n", l.Title, l.URL)
	}
	b.WriteString("\nWHAT'S NEXT?\n")
	b.WriteString("- Review each document and customize as needed\n")
	b.WriteString("- Share relevant PDFs with your school administration\n")
	b.WriteString("- Print or distribute materials to students\n\n")
	b.WriteString("Forged by CurrForge\nNeed help? Visit https://currforge.com/support\n")
	return b.String()
}

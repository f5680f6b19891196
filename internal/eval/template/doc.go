// Package template provides a Handlebars template engine for the FTP
// welcome banner.
//
// Example usage:
//
//	engine := template.NewEngine()
//
//	data := map[string]interface{}{
//	    "name": "dago ftp node",
//	    "user": "uploader",
//	    "home": "/srv/ftp/uploads",
//	}
//
//	banner, err := engine.Render("Welcome {{user}} to {{uppercase name}} ({{basename home}})", data)
//	// Welcome uploader to DAGO FTP NODE (uploads)
//
// Built-in helpers:
//   - uppercase - Convert string to uppercase
//   - lowercase - Convert string to lowercase
//   - trim - Trim whitespace from string
//   - default - Return default value if first arg is empty
//   - basename - Last element of a slash or backslash separated path
package template

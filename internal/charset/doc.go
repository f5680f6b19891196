// Package charset names the character sets the node deals with and resolves
// the platform charset.
//
// Example usage:
//
//	enc, err := charset.Lookup("GBK")
//	if err != nil {
//	    return err
//	}
//	text := charset.Decode(raw, enc)
package charset

// Package textutil provides filename sanitization for note artifacts:
// Unicode NFC normalization plus replacement of filesystem-unsafe characters.
package textutil

// Package soup is a small, forgiving HTML tree with a BeautifulSoup-style
// query API.
//
// Parse turns any markup into a Document without ever failing. Documents
// and the Tags returned from them support:
//
//   - FindAll / Find with a NameFilter (ByName, ByFunc) and Attrs
//     (AttrEquals, AttrFunc)
//   - Select / SelectOne with a compound CSS selector subset: type, #id,
//     .class, and one [attr], [attr=v] or [attr*=v] clause; comma separated
//     lists are supported, combinators are not
//   - GetText and DecodeContents
//
// Absence is reported with a boolean, never an error. The only error in the
// package is ErrAttrNotFound from Tag.Attr.
package soup

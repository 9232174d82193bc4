package commenter

import (
	"fmt"
	"strings"

	"comprehend/internal/model"
)

func filePrompt(f *model.File) string {
	var names []string
	for _, cid := range f.Classes() {
		if f.Decl(cid).Parent == 0 {
			names = append(names, f.Decl(cid).Name)
		}
	}
	summary := strings.Join(truncateList(names, 3), ", ")

	pkg := f.Package
	if pkg == "" {
		pkg = "default package"
	}

	return fmt.Sprintf(`Write a brief JavaDoc comment for this Java file:

File: %s
Package: %s
Main classes: %s
Total imports: %d

Explain what this file contains and its main purpose.
Keep it concise and helpful.
Return only the JavaDoc comment.`, baseOf(f.Path), pkg, summary, len(f.Imports))
}

func classPrompt(f *model.File, cls *model.Declaration) string {
	inheritance := ""
	if cls.Class != nil {
		if cls.Class.Extends != "" {
			inheritance += " extends " + cls.Class.Extends
		}
		if len(cls.Class.Implements) > 0 {
			inheritance += " implements " + strings.Join(truncateList(cls.Class.Implements, 2), ", ")
		}
	}

	pkg := f.Package
	if pkg == "" {
		pkg = "default"
	}

	var methods, fields int
	for _, c := range cls.Children {
		switch f.Decl(c).Kind {
		case model.KindMethod, model.KindConstructor:
			methods++
		case model.KindField:
			fields++
		}
	}

	kind := string(cls.Kind)
	return fmt.Sprintf(`Write a concise JavaDoc comment for this Java %s:

%s: %s%s
Package: %s
Methods: %d
Fields: %d
Visibility: %s

Explain the purpose and main responsibilities of this %s.
Return only the JavaDoc comment.`,
		kind, titleCase(kind), cls.Name, inheritance, pkg, methods, fields, cls.Visibility, kind)
}

func methodPrompt(cls, m *model.Declaration) string {
	var params []string
	for _, p := range m.Method.Params {
		params = append(params, strings.TrimSpace(p.Type+" "+p.Name))
	}
	signature := fmt.Sprintf("%s %s %s(%s)", m.Visibility, m.Method.ReturnType, m.Name, strings.Join(params, ", "))

	return fmt.Sprintf(`Write a JavaDoc comment for this Java method:

Method: %s
Class: %s
Static: %t

Explain what this method does, include @param and @return if appropriate.
Be practical and helpful.
Return only the JavaDoc comment.`, signature, cls.Name, m.Method.Static)
}

func fieldPrompt(cls, fd *model.Declaration) string {
	return fmt.Sprintf(`Write a brief inline comment for this Java field:

Field: %s %s %s
Class: %s
Static: %t, Final: %t

Just explain what this field represents in a few words.
Return only a single-line comment starting with //`,
		fd.Visibility, fd.Field.Type, fd.Name, cls.Name, fd.Field.Static, fd.Field.Final)
}

func truncateList(items []string, max int) []string {
	if len(items) <= max {
		return items
	}
	out := append([]string{}, items[:max]...)
	out[max-1] += "..."
	return out
}

func titleCase(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func baseOf(path string) string {
	if i := strings.LastIndexAny(path, "/\\"); i >= 0 {
		return path[i+1:]
	}
	return path
}

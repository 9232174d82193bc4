package model

// Member is a named class member with its visibility, kept for diagram labels.
type Member struct {
	Name       string
	Visibility Visibility
}

// ClassInfo is the project-level summary of one class, keyed by its fully
// qualified name. It is what the dependency graph and the diagram builders
// consume; they never walk file arenas directly.
type ClassInfo struct {
	Name       string
	FQN        string
	Package    string
	Kind       Kind // KindClass, KindInterface or KindEnum
	Extends    string
	Implements []string
	Fields     []Member
	Methods    []Member

	// TypeRefs lists every raw type name the declaration references:
	// supertype, interfaces, field types, parameter types, return types and
	// declared exceptions.
	TypeRefs []string
}

// Project aggregates every parsed file of one run.
type Project struct {
	Root  string
	Files []*File

	classes map[string]*ClassInfo
	order   []string // FQNs in registration order
}

// NewProject creates an empty project rooted at the given directory.
func NewProject(root string) *Project {
	return &Project{
		Root:    root,
		classes: make(map[string]*ClassInfo),
	}
}

// AddFile registers a parsed file and all of its classes. When two classes
// resolve to the same fully qualified name the later one wins in lookups;
// the colliding names are returned so the caller can log them.
func (p *Project) AddFile(f *File) []string {
	p.Files = append(p.Files, f)

	var collisions []string
	for _, id := range f.Classes() {
		info := p.summarize(f, id)
		if _, seen := p.classes[info.FQN]; seen {
			collisions = append(collisions, info.FQN)
		} else {
			p.order = append(p.order, info.FQN)
		}
		p.classes[info.FQN] = info
	}
	return collisions
}

// Class looks up a class by fully qualified name.
func (p *Project) Class(fqn string) (*ClassInfo, bool) {
	c, ok := p.classes[fqn]
	return c, ok
}

// Classes returns every registered class in declaration order.
func (p *Project) Classes() []*ClassInfo {
	out := make([]*ClassInfo, 0, len(p.order))
	for _, fqn := range p.order {
		out = append(out, p.classes[fqn])
	}
	return out
}

// Packages groups the registered classes by package name.
func (p *Project) Packages() map[string][]*ClassInfo {
	out := make(map[string][]*ClassInfo)
	for _, fqn := range p.order {
		c := p.classes[fqn]
		out[c.Package] = append(out[c.Package], c)
	}
	return out
}

// Resolve maps a raw type name to the FQN of a project class. Qualified
// names resolve directly; simple names resolve to the same package first,
// then to a unique simple-name match anywhere in the project. The second
// return is false when the name is unknown or ambiguous.
func (p *Project) Resolve(name, fromPackage string) (string, bool) {
	if name == "" {
		return "", false
	}
	if _, ok := p.classes[name]; ok {
		return name, true
	}
	if fromPackage != "" {
		local := fromPackage + "." + name
		if _, ok := p.classes[local]; ok {
			return local, true
		}
	}
	match := ""
	for _, fqn := range p.order {
		if p.classes[fqn].Name == name {
			if match != "" {
				return "", false // ambiguous
			}
			match = fqn
		}
	}
	return match, match != ""
}

func (p *Project) summarize(f *File, id int) *ClassInfo {
	d := f.Decl(id)
	info := &ClassInfo{
		Name:    d.Name,
		FQN:     f.FullName(id),
		Package: f.Package,
		Kind:    d.Kind,
	}
	if d.Class != nil {
		info.Extends = d.Class.Extends
		info.Implements = append(info.Implements, d.Class.Implements...)
		if info.Extends != "" {
			info.TypeRefs = append(info.TypeRefs, info.Extends)
		}
		info.TypeRefs = append(info.TypeRefs, d.Class.Implements...)
	}
	for _, fid := range f.Members(id, KindField) {
		fd := f.Decl(fid)
		info.Fields = append(info.Fields, Member{Name: fd.Name, Visibility: fd.Visibility})
		if fd.Field != nil {
			info.TypeRefs = append(info.TypeRefs, fd.Field.Type)
		}
	}
	for _, kind := range []Kind{KindMethod, KindConstructor} {
		for _, mid := range f.Members(id, kind) {
			md := f.Decl(mid)
			info.Methods = append(info.Methods, Member{Name: md.Name, Visibility: md.Visibility})
			if md.Method == nil {
				continue
			}
			if md.Method.ReturnType != "" {
				info.TypeRefs = append(info.TypeRefs, md.Method.ReturnType)
			}
			for _, param := range md.Method.Params {
				info.TypeRefs = append(info.TypeRefs, param.Type)
			}
			info.TypeRefs = append(info.TypeRefs, md.Method.Throws...)
		}
	}
	return info
}

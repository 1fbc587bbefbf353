package sidebar

const (
	// GroupDocs is the key of the documentation navigation group.
	GroupDocs = "docs"

	IconCompass  = "AiOutlineCompass"
	IconViewGrid = "HiOutlineViewGrid"
)

// Docs returns a fresh copy of the documentation site sidebar.
func Docs() *Sidebar {
	return New("Documentation").Add(GroupDocs,
		Category("overview", "Overview",
			Doc("introduction", "Introduction"),
			Doc("installation", "Installation"),
			Doc("whats-a-machine", "State machine"),
			Doc("styling", "Styling"),
			Doc("composition", "Composition"),
			Doc("programmatic-control", "Programmatic Control"),
			Doc("faq", "FAQ"),
			Doc("changelogs", "Changelog").WithHref("/changelogs/latest"),
		).WithIcon(IconCompass),
		Category("components", "Components",
			Doc("accordion", "Accordion"),
			Doc("checkbox", "Checkbox"),
			Doc("dialog", "Dialog"),
			Doc("editable", "Editable"),
			Doc("hover-card", "Hover Card"),
			Doc("menu", "Menu"),
			Doc("context-menu", "Context Menu"),
			Doc("nested-menu", "Nested Menu"),
			Doc("number-input", "Number Input"),
			Doc("pagination", "Pagination"),
			Doc("pin-input", "Pin Input"),
			Doc("popover", "Popover"),
			Doc("pressable", "Pressable"),
			Doc("radio-group", "Radio Group"),
			Doc("range-slider", "Range Slider"),
			Doc("rating", "Rating"),
			Doc("slider", "Slider"),
			Doc("tabs", "Tabs"),
			Doc("tags-input", "Tags Input"),
			Doc("toast", "Toast"),
			Doc("tooltip", "Tooltip"),
		).WithIcon(IconViewGrid),
	)
}

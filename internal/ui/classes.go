package ui

import twmerge "github.com/Oudwins/tailwind-merge-go"

const (
	buttonBase = "inline-flex items-center justify-center rounded-md px-4 py-2 text-sm font-medium text-white transition-colors disabled:opacity-50"
	cardBase   = "flex flex-col gap-3 rounded-lg border border-gray-200 p-6 shadow-sm"
)

type ButtonVariant string

const (
	ButtonPrimary   ButtonVariant = "primary"
	ButtonSecondary ButtonVariant = "secondary"
)

var buttonVariants = map[ButtonVariant]string{
	ButtonPrimary:   "bg-indigo-600 hover:bg-indigo-700",
	ButtonSecondary: "bg-gray-800 hover:bg-gray-900 px-6",
}

// ButtonClass merges the base button classes with a variant and any
// caller overrides; later classes win on conflict.
func ButtonClass(variant ButtonVariant, extra ...string) string {
	classes := append([]string{buttonBase, buttonVariants[variant]}, extra...)
	return twmerge.Merge(classes...)
}

func CardClass(extra ...string) string {
	return twmerge.Merge(append([]string{cardBase}, extra...)...)
}

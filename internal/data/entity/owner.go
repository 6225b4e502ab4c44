package entity

// ProcessOwner owns favorites and history when requests are not tied to a
// signed-in user.
const ProcessOwner = "local"

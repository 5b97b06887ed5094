// Package returns provides the post-delivery return workflow: the Request
// aggregate for one claim against a delivered suborder, its Status state
// machine, and the global Settings policy that gates claim creation.
//
// Key business rules:
//   - a claim can be opened only while the suborder is delivered, returns are
//     enabled, and the window has not closed (enforced by the creating use case)
//   - approval triggers the payment refund and the suborder's Returned
//     transition together; rejection mutates nothing else
//   - Rejected and Completed are terminal
//   - every status change appends an attributed history entry mirroring the
//     payment audit trail, so claim decisions and money movement reconcile
//     independently
package returns

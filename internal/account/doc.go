// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Vocably Contributors

// Package account provides the user persistence domain: field validation,
// credential hashing, remember/reset token issuance, and the follow graph.
//
// # Domain Types
//
// User carries the persisted identity fields plus the nullable remember and
// reset digests. Relationship is the join entity behind the follow graph.
// Plaintext passwords and tokens never live on the structs; only their
// bcrypt digests are persisted.
//
// # Services
//
// Service coordinates validation, hashing, and repository writes:
//   - Create / Update - validated persistence with email normalization
//   - Remember / Forget / Authenticated - remember-token session flow
//   - StartReset / ResetPassword / PruneResetDigests - password-reset flow
//   - Follow / Unfollow / IsFollowing - follow graph mutation
//
// Repositories receive pre-validated values; storage errors propagate
// wrapped but unmodified in meaning.
package account

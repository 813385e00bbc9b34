package mysql

const upsertPropertySQL = `
INSERT INTO properties
  (id, owner_id, title, description, price, location, property_type,
   commission_percentage, is_exclusive, dossier_url, images)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  owner_id              = VALUES(owner_id),
  title                 = VALUES(title),
  description           = VALUES(description),
  price                 = VALUES(price),
  location              = VALUES(location),
  property_type         = VALUES(property_type),
  commission_percentage = VALUES(commission_percentage),
  is_exclusive          = VALUES(is_exclusive),
  dossier_url           = VALUES(dossier_url),
  images                = VALUES(images),
  updated_at            = CURRENT_TIMESTAMP
`

const upsertPropertyI18nSQL = `
INSERT INTO property_i18n
  (property_id, lang, title, description)
VALUES
  (?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  title       = VALUES(title),
  description = VALUES(description)
`

// Localized title/description preferred; base columns as fallback, chosen
// in the repo.
const getPropertySQL = `
SELECT
  p.id,
  p.title,
  p.description,
  p.price,
  p.location,
  p.property_type,
  p.commission_percentage,
  p.is_exclusive,
  p.dossier_url,
  p.images,
  i.title,
  i.description
FROM properties p
LEFT JOIN property_i18n i
  ON i.property_id = p.id AND i.lang = ?
WHERE p.id = ?
`

const listPropertiesSQL = `
SELECT
  p.id,
  COALESCE(i.title, p.title),
  p.price,
  p.location,
  p.property_type,
  p.is_exclusive
FROM properties p
LEFT JOIN property_i18n i
  ON i.property_id = p.id AND i.lang = ?
WHERE (? IS NULL OR p.location LIKE CONCAT('%', ?, '%'))
  AND (? IS NULL OR p.property_type = ?)
ORDER BY p.id
LIMIT ?
`

const insertLeadSQL = `
INSERT INTO leads
  (full_name, email, phone, budget, target_location, target_regions,
   intent, request_access, message, role, status, source, document_url)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

const listLeadsSQL = `
SELECT
  id, full_name, email, phone, budget, target_location, target_regions,
  intent, request_access, message, role, status, source, document_url, relayed_at
FROM leads
WHERE (? IS NULL OR status = ?)
  AND (? IS NULL OR role = ?)
ORDER BY id DESC
LIMIT ?
`

const listUnrelayedSQL = `
SELECT
  id, full_name, email, phone, budget, target_location, target_regions,
  intent, request_access, message, role, status, source, document_url, relayed_at
FROM leads
WHERE relayed_at IS NULL
ORDER BY id
LIMIT ?
`

const markRelayedSQL = `
UPDATE leads SET relayed_at = CURRENT_TIMESTAMP WHERE id = ?
`

const insertRelayMissSQL = `
INSERT INTO relay_misses (lead_id, http_status, reason)
VALUES (?, ?, ?)
ON DUPLICATE KEY UPDATE seen_at = CURRENT_TIMESTAMP
`

const insertContractSQL = `
INSERT INTO contracts
  (user_id, type, signature_url, signed_at, contract_text, criteria)
VALUES
  (?, ?, ?, ?, ?, ?)
`

const getContractSQL = `
SELECT id, user_id, type, signature_url, signed_at, contract_text, criteria
FROM contracts
WHERE id = ?
`

const getProfileByTokenSQL = `
SELECT id, full_name, email, role, status, company_name, api_token
FROM profiles
WHERE api_token = ?
`

const setProfileStatusSQL = `
UPDATE profiles SET status = ? WHERE id = ?
`
